package main

import (
	"os"

	"github.com/ksyq12/certbot-deployer-vsphere/internal/cli"
	"github.com/ksyq12/certbot-deployer-vsphere/internal/plugin"
	"github.com/ksyq12/certbot-deployer-vsphere/internal/vsphere"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cli.SetVersion(version)
	vsphere.SetVersion(version)
	if err := plugin.Main(os.Args[1:]); err != nil {
		os.Exit(1)
	}
}
