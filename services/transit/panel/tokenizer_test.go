package panel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	segments, err := Tokenize(kandaToKamiyacho)
	require.NoError(t, err)
	require.Len(t, segments, 6)

	assert.Equal(t, Clock{Hour: 9, Minute: 35}, segments[0].Timestamp)
	assert.Equal(t, []string{
		"〒101-0041 東京都千代田区神田須田町１丁目２０−１ 吉川ビル",
		"徒歩",
		"約 3 分、210 m",
	}, segments[0].Lines)

	assert.Equal(t, Clock{Hour: 9, Minute: 38}, segments[1].Timestamp)
	assert.Equal(t, "神田駅\n銀座線各停渋谷行\n7 分\n（4 駅乗車）", segments[1].Text())

	assert.Equal(t, Clock{Hour: 9, Minute: 58}, segments[5].Timestamp)
	assert.Equal(t, []string{"〒105-0001 東京都港区虎ノ門４丁目２−６"}, segments[5].Lines)
}

type tokenizeErrorTest struct {
	name string
	text string
}

var tokenizeErrorTests = []tokenizeErrorTest{
	{
		"empty text",
		"",
	},
	{
		"header only",
		"9:35 (火曜日) - 9:58 （23 分）\n銀座線  日比谷線\n神田駅から 9:38",
	},
	{
		"whitespace only",
		"\n   \n\t\n",
	},
}

func TestTokenizeNoTimestamps(t *testing.T) {
	for _, tt := range tokenizeErrorTests {
		t.Run(tt.name, func(t *testing.T) {
			segments, err := Tokenize(tt.text)
			assert.Equal(t, ErrNoTimestampsFound, err)
			assert.Empty(t, segments)
		})
	}
}

func TestTokenizeTimestampWithoutContent(t *testing.T) {
	segments, err := Tokenize("9:00\n9:05\r\n渋谷駅\n")
	require.NoError(t, err)
	require.Len(t, segments, 2)

	assert.Empty(t, segments[0].Lines)
	assert.Equal(t, []string{"渋谷駅"}, segments[1].Lines)
}

func TestHeaderLines(t *testing.T) {
	assert.Equal(t, []string{
		"9:35 (火曜日) - 9:58 （23 分）",
		"銀座線  日比谷線",
		"神田駅から 9:38",
		"180円  7 分",
	}, HeaderLines(kandaToKamiyacho))

	assert.Empty(t, HeaderLines(shibuyaLateNight))
}
