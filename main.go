package main

import "github.com/nikogura/content-qa/cmd"

func main() {
	cmd.Execute()
}
