package main

import "github.com/fkiliver/RPGMaker-LLM-Translator/internal/cli"

func main() {
	cli.Execute()
}
