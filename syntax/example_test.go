// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package syntax_test

import (
	"fmt"

	"github.com/smallsh/smallsh/syntax"
)

func Example() {
	cmd, err := syntax.NewParser().Parse("sort -r < names.txt > sorted.txt &", false)
	if err != nil {
		return
	}
	fmt.Printf("%q\n", cmd.Args)
	fmt.Println(cmd.Stdin, cmd.Stdout, cmd.Background)
	// Output:
	// ["sort" "-r"]
	// names.txt sorted.txt true
}

func ExampleFields() {
	for field := range syntax.Fields("  ls\t-la  /tmp ") {
		fmt.Printf("%q\n", field)
	}
	// Output:
	// "ls"
	// "-la"
	// "/tmp"
}

func ExampleParseError() {
	_, err := syntax.NewParser().Parse("ls >", false)
	fmt.Println(err)
	// Output:
	// no output file specified
}
