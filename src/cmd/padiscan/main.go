package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/padicalls/padiscan/src/cmd"
	"github.com/padicalls/padiscan/src/internal/logger"
)

func main() {
	// .env 不存在不算错
	_ = godotenv.Load()

	if err := logger.InitLogger(); err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	os.Exit(cmd.Run())
}
