// Command example runs the worked example from the Glicko-2 paper
// (http://www.glicko.com/glicko2.doc/example.html) and prints the result.
package main

import (
	"fmt"
	"log"

	"skillrate/rating"
)

func main() {
	a := rating.NewPlayerWith(1500.0, 200.0, 0.06)
	b := rating.NewPlayerWith(1400.0, 30.0, 0.06)
	c := rating.NewPlayerWith(1550.0, 100.0, 0.06)
	d := rating.NewPlayerWith(1700.0, 300.0, 0.06)

	a.AddWin(b)
	a.AddLoss(c)
	if err := a.AddResult(d, rating.Loss); err != nil { // alternative way to add a result
		log.Fatal(err)
	}

	if err := a.Update(); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("rating = %f, RD = %f\n", a.Rating(), a.Deviation())
}
