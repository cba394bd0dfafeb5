package routecache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type normalizeAddressTest struct {
	name   string
	addr   string
	result string
}

var normalizeAddressTests = []normalizeAddressTest{
	{
		"full width block number",
		"東京都千代田区 神田須田町１丁目２０−１",
		"東京都千代田区神田須田町1-20-1",
	},
	{
		"ideographic space and building",
		"東京都千代田区　神田須田町１丁目２０－１　吉川ビル",
		"東京都千代田区神田須田町1-20-1吉川ビル",
	},
	{
		"banchi and gou",
		"東京都港区虎ノ門４丁目２番６号",
		"東京都港区虎ノ門4-2-6",
	},
	{
		"already normalized",
		"東京都港区虎ノ門4-2-6",
		"東京都港区虎ノ門4-2-6",
	},
	{
		"long vowel mark used as a dash",
		"東京都港区虎ノ門4ー2ー6",
		"東京都港区虎ノ門4-2-6",
	},
	{
		"katakana long vowel kept",
		"東京都渋谷区渋谷2丁目 センタービル",
		"東京都渋谷区渋谷2-センタービル",
	},
	{
		"chome only",
		"東京都新宿区新宿３丁目",
		"東京都新宿区新宿3",
	},
}

func TestNormalizeAddress(t *testing.T) {
	for _, tt := range normalizeAddressTests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.result, NormalizeAddress(tt.addr))
		})
	}
}
