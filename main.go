package main

import (
	"github.com/budgetbuddy-dev/budgetbuddy/cmd"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/logging"
)

func main() {
	logging.LoadEnv()
	logging.Configure()
	cmd.Execute()
}
