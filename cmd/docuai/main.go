package main

import "github.com/mvp-joe/docuai/internal/cli"

func main() {
	cli.Execute()
}
