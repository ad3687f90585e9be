// Command xmlrate rates a whole tournament from an XML file: players and
// teams, then rating periods of games and races. Standings are printed after
// every period. See the document type for the file layout.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"skillrate/pkg/logger"
)

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	age := flag.Bool("age", false, "grow deviation for players with no games in a period (canonical Glicko-2)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: xmlrate [-age] <tournament.xml>\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()
	logger.Init(getenv("LOG_LEVEL", "info"))
	defer logger.Sync()

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		logger.Fatal("open tournament file", "err", err)
	}
	defer f.Close()

	doc, err := parseDocument(f)
	if err != nil {
		logger.Fatal("parse tournament file", "path", flag.Arg(0), "err", err)
	}

	t, err := newTournament(doc)
	if err != nil {
		logger.Fatal("load tournament", "err", err)
	}
	logger.Debug("tournament loaded",
		"players", len(doc.Players), "teams", len(doc.Teams), "periods", len(doc.Periods))

	fmt.Println("initial ratings")
	t.writeStandings(os.Stdout)

	for i, p := range doc.Periods {
		if err := t.runPeriod(p, *age); err != nil {
			logger.Fatal("rating period failed", "period", i+1, "err", err)
		}
		fmt.Printf("\nafter rating period %d\n", i+1)
		t.writeStandings(os.Stdout)
	}
}
