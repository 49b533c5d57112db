// Command syndicate publishes content to many websites and serves the LinkedIn façade.
package main

import "github.com/ibeckermayer/syndicate/internal/cli"

func main() {
	cli.Execute()
}
