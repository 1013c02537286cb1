package main

import (
	"log"

	"github.com/sedastudio/boutique/internal/server"

	_ "github.com/sedastudio/boutique/database/migrations"
)

func main() {
	if err := server.Start(); err != nil {
		log.Fatal(err)
	}
}
