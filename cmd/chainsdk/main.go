// chainsdk generates chainable GraphQL client SDKs.
package main

import "github.com/syssam/chainsdk/internal/cli"

func main() {
	cli.Execute()
}
