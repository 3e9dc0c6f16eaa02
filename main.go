package main

import (
	"log"

	"github.com/quentinv/battrace/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
