package panel

// Panel captures taken from the Kanda office searches.

const kandaToKamiyacho = `
9:35 (火曜日) - 9:58 （23 分）
銀座線  日比谷線
神田駅から 9:38
180円  7 分
9:35
〒101-0041 東京都千代田区神田須田町１丁目２０−１ 吉川ビル
徒歩
約 3 分、210 m
9:38
神田駅
銀座線各停渋谷行
7 分
（4 駅乗車）
9:45
銀座駅
徒歩
約 1 分
9:49
銀座駅
日比谷線各停中目黒行
6 分
（4 駅乗車）
9:55
神谷町駅
徒歩
約 3 分、170 m
9:58
〒105-0001 東京都港区虎ノ門４丁目２−６
`

const kandaToNihonbashi = `
9:50 (火曜日) - 9:57 （7 分）
銀座線
神田駅から 9:53
180円  4 分
9:50
〒101-0041 東京都千代田区神田須田町１丁目２０−１ 吉川ビル
徒歩
約 3 分、210 m
9:53
神田駅
銀座線各停渋谷行
3 分
（2 駅乗車）
9:56
日本橋駅
徒歩
約 1 分、230 m
9:57
日本橋髙島屋三井ビルディング
`

const shibuyaLateNight = `
23:50
〒150-0002 東京都渋谷区渋谷２丁目２１−１
徒歩
約 5 分
23:55
渋谷駅
JR山手線外回り
8 分
（3 駅乗車）
0:03
新宿駅
徒歩
約 4 分、300 m
0:07
〒160-0022 東京都新宿区新宿３丁目
`

const walkOnly = `
10:00 (水曜日) - 10:12 （12 分）
10:00
〒101-0041 東京都千代田区神田須田町１丁目
徒歩
約 12 分、950 m
10:12
〒101-0021 東京都千代田区外神田１丁目
`

const kokubunjiToShinjuku = `
8:10 (月曜日) - 8:42 （32 分）
JR中央線快速
国分寺駅から 8:15
230円  20 分
8:10
〒185-0012 東京都国分寺市本町２丁目
徒歩
約 5 分、350 m
8:15
国分寺駅
JR中央線快速東京行
20 分
（5 駅乗車）
8:35
新宿駅
徒歩
約 7 分、550 m
8:42
〒160-0023 東京都新宿区西新宿２丁目
`
