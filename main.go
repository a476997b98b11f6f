package main

import "github.com/ericzolf/doco2podans/cmd"

func main() {
	cmd.Execute()
}
