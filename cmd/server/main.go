package main

import (
	"github.com/starkpulse/gas-backend/internal/server"
)

func main() {
	server.Init()
}
