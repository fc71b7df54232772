package main

import "github.com/justin-mueller/Einkaufsliste/cmd"

func main() {
	cmd.Execute()
}
