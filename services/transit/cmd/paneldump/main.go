package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/japandatascience/timeline-mapping/services/transit/export"
	"github.com/japandatascience/timeline-mapping/services/transit/ingest"
	"github.com/japandatascience/timeline-mapping/services/transit/panel"
	"go.uber.org/zap"
)

func readPanelText(path string, isHTML bool) (string, error) {
	if ingest.IsCapturePath(path) {
		capture, err := ingest.LoadCapture(path)
		if err != nil {
			return "", err
		}
		return capture.Text()
	}

	var r io.Reader = os.Stdin
	if len(path) > 0 {
		f, err := os.Open(path)
		if err != nil {
			return "", err
		}
		defer f.Close()
		r = f
	}

	if isHTML {
		return panel.TextFromHTML(r)
	}

	contents, err := ioutil.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(contents), nil
}

func main() {
	var (
		file   = flag.String("file", "", "The panel text, markup or capture to parse. Reads stdin if empty")
		isHTML = flag.Bool("html", false, "Whether the input is saved panel markup")
		asCSV  = flag.Bool("csv", false, "Print one CSV row per leg instead of JSON")
		debug  = flag.Bool("debug", false, "Dump the intermediate parse state")
	)
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	if !*debug {
		logger = zap.NewNop()
	}

	text, err := readPanelText(*file, *isHTML)
	if err != nil {
		fmt.Printf("Unable to read panel text: %s\n", err.Error())
		os.Exit(1)
	}

	res, err := panel.NewParser(logger).Parse(text)
	if err != nil {
		fmt.Printf("Unable to parse panel text: %s\n", err.Error())
		os.Exit(1)
	}

	if *debug {
		spew.Dump(res.Header)
		spew.Dump(res.Steps)
		for _, seg := range res.Dropped {
			fmt.Printf("Dropped %s: %s\n", seg.Timestamp.String(), strings.Join(seg.Lines, " / "))
		}
	}

	if *asCSV {
		label := strings.TrimSuffix(filepath.Base(*file), filepath.Ext(*file))
		if err := export.WriteCSV(os.Stdout, export.Records(label, res.Route)); err != nil {
			fmt.Printf("Unable to write CSV: %s\n", err.Error())
			os.Exit(1)
		}
		return
	}

	out, err := json.MarshalIndent(res.Route, "", "  ")
	if err != nil {
		fmt.Printf("Unable to encode route: %s\n", err.Error())
		os.Exit(1)
	}
	fmt.Println(string(out))
}
