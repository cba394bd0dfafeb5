package routecache

import (
	"regexp"
	"strings"

	"golang.org/x/text/width"
)

var (
	chomeRegex     = regexp.MustCompile(`(\d+)丁目`)
	banchiRegex    = regexp.MustCompile(`(\d+)番地?`)
	gouRegex       = regexp.MustCompile(`(\d+)号`)
	choonDashRegex = regexp.MustCompile(`(\d)ー`)
	dashRunRegex   = regexp.MustCompile(`-{2,}`)

	dashReplacer = strings.NewReplacer(
		"−", "-",
		"‐", "-",
		"‑", "-",
		"–", "-",
		"—", "-",
		"―", "-",
	)
)

// NormalizeAddress reduces a Japanese address to a canonical block form so that the same
// place typed two different ways produces the same fingerprint.
// "東京都千代田区 神田須田町１丁目２０−１" becomes "東京都千代田区神田須田町1-20-1".
func NormalizeAddress(addr string) string {
	addr = width.Fold.String(addr)
	addr = dashReplacer.Replace(addr)
	addr = choonDashRegex.ReplaceAllString(addr, "$1-")
	addr = strings.Join(strings.Fields(addr), "")

	addr = chomeRegex.ReplaceAllString(addr, "$1-")
	addr = banchiRegex.ReplaceAllString(addr, "$1-")
	addr = gouRegex.ReplaceAllString(addr, "$1")

	addr = dashRunRegex.ReplaceAllString(addr, "-")
	return strings.TrimSuffix(addr, "-")
}
