// Command octopi builds and inspects Octopi coherence fabrics.
package main

import "github.com/sarchlab/octopi/cmd"

func main() {
	cmd.Execute()
}
