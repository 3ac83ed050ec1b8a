package main

import "github.com/grailbio/genpriv/cmd/genpriv/cmd"

func main() {
	cmd.Run()
}
