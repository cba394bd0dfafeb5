package panel

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type parseTest struct {
	name   string
	text   string
	result *Route
}

var parseTests = []parseTest{
	{
		"kanda to kamiyacho",
		kandaToKamiyacho,
		&Route{
			TotalMinutes: 23,
			Details: RouteDetails{
				WalkToStation: 3,
				StationUsed:   "神田",
				Trains: []*Leg{
					{
						Line:        "銀座線",
						RideMinutes: 7,
						From:        "神田",
						To:          "銀座",
						TransferAfter: &Transfer{
							WalkMinutes: 1,
							NextLine:    "日比谷線",
						},
					},
					{
						Line:        "日比谷線",
						RideMinutes: 6,
						From:        "銀座",
						To:          "神谷町",
						WaitMinutes: intPtr(3),
					},
				},
				WalkFromStation: 3,
			},
		},
	},
	{
		"kanda to nihonbashi",
		kandaToNihonbashi,
		&Route{
			TotalMinutes: 7,
			Details: RouteDetails{
				WalkToStation: 3,
				StationUsed:   "神田",
				Trains: []*Leg{
					{
						Line:        "銀座線",
						RideMinutes: 3,
						From:        "神田",
						To:          "日本橋",
					},
				},
				WalkFromStation: 1,
			},
		},
	},
	{
		"station name containing the minute character",
		kokubunjiToShinjuku,
		&Route{
			TotalMinutes: 32,
			Details: RouteDetails{
				WalkToStation: 5,
				StationUsed:   "国分寺",
				Trains: []*Leg{
					{
						Line:        "JR中央線",
						RideMinutes: 20,
						From:        "国分寺",
						To:          "新宿",
					},
				},
				WalkFromStation: 7,
			},
		},
	},
	{
		"walk only",
		walkOnly,
		&Route{
			TotalMinutes: 12,
			Details: RouteDetails{
				WalkToStation: 12,
				Trains:        []*Leg{},
			},
		},
	},
}

func TestParse(t *testing.T) {
	for _, tt := range parseTests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewParser(zaptest.NewLogger(t))

			res, err := p.Parse(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.result, res.Route)
			assert.Equal(t, 0, res.TotalDrift)
			assert.Len(t, res.Dropped, 1)
		})
	}
}

func TestParseNoTimestamps(t *testing.T) {
	p := NewParser(zaptest.NewLogger(t))

	res, err := p.Parse("9:35 (火曜日) - 9:58 （23 分）\n銀座線  日比谷線")
	assert.Equal(t, ErrNoTimestampsFound, err)
	assert.Nil(t, res)
}

func TestParseNothingClassified(t *testing.T) {
	p := NewParser(zaptest.NewLogger(t))

	res, err := p.Parse("9:58\n〒105-0001 東京都港区虎ノ門４丁目２−６")
	assert.Equal(t, ErrEmptyRoute, err)
	assert.Nil(t, res)
}

func TestParseHeaderResult(t *testing.T) {
	p := NewParser(zaptest.NewLogger(t))

	res, err := p.Parse(kandaToKamiyacho)
	require.NoError(t, err)

	assert.Equal(t, Clock{Hour: 9, Minute: 35}, res.Departure)
	assert.Equal(t, Clock{Hour: 9, Minute: 58}, res.Arrival)
	assert.Equal(t, 180, res.Header.FareYen)
	assert.Equal(t, []string{"銀座線", "日比谷線"}, res.Header.Lines)
	assert.Equal(t, StepWalkFromStation, res.Steps[len(res.Steps)-1].Kind)
}

func TestParseJSON(t *testing.T) {
	p := NewParser(zaptest.NewLogger(t))

	res, err := p.Parse(kandaToKamiyacho)
	require.NoError(t, err)

	data, err := json.Marshal(res.Route)
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, float64(23), raw["total_time"])

	details := raw["details"].(map[string]interface{})
	assert.Equal(t, "神田", details["station_used"])
	trains := details["trains"].([]interface{})
	require.Len(t, trains, 2)

	first := trains[0].(map[string]interface{})
	_, hasWait := first["wait_time"]
	assert.False(t, hasWait)
	assert.Equal(t, map[string]interface{}{
		"time":    float64(1),
		"to_line": "日比谷線",
	}, first["transfer_after"])

	second := trains[1].(map[string]interface{})
	assert.Equal(t, float64(3), second["wait_time"])
	_, hasTransfer := second["transfer_after"]
	assert.False(t, hasTransfer)

	var decoded Route
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, res.Route, &decoded)
}

func TestParseWalkOnlyJSON(t *testing.T) {
	p := NewParser(zaptest.NewLogger(t))

	res, err := p.Parse(walkOnly)
	require.NoError(t, err)

	data, err := json.Marshal(res.Route)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"total_time": 12,
		"details": {
			"walk_to_station": 12,
			"station_used": "",
			"trains": [],
			"walk_from_station": 0
		}
	}`, string(data))
}

func TestParseIdempotent(t *testing.T) {
	p := NewParser(zaptest.NewLogger(t))

	first, err := p.Parse(kandaToKamiyacho)
	require.NoError(t, err)
	second, err := p.Parse(kandaToKamiyacho)
	require.NoError(t, err)

	firstJSON, err := json.Marshal(first.Route)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second.Route)
	require.NoError(t, err)
	assert.Equal(t, firstJSON, secondJSON)
}

func TestParseConcurrent(t *testing.T) {
	p := NewParser(zaptest.NewLogger(t))

	var wg sync.WaitGroup
	routes := make([]*Route, 8)
	for i := range routes {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			text := kandaToKamiyacho
			if idx%2 == 1 {
				text = kandaToNihonbashi
			}
			res, err := p.Parse(text)
			if err == nil {
				routes[idx] = res.Route
			}
		}(i)
	}
	wg.Wait()

	for idx, route := range routes {
		require.NotNil(t, route)
		if idx%2 == 1 {
			assert.Equal(t, 7, route.TotalMinutes)
		} else {
			assert.Equal(t, 23, route.TotalMinutes)
		}
	}
}
