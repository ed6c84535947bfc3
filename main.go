package main

import "github.com/lukman83/lcsc-scrap/cmd"

func main() {
	cmd.Execute()
}
