package main

import (
	"github.com/technophil98/traefik-docker-http-provider-server/pkg/cli"
)

func main() {
	cli.Execute()
}
