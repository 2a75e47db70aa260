package main

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/ferropb/ferropb/cmd/ferropb/internal/gen"
	"github.com/ferropb/ferropb/cmd/ferropb/internal/plugin"
)

type CLI struct {
	Version VersionCmd `cmd:"" help:"Print version information."`
	Gen     gen.Cmd    `cmd:"" help:"Generate Rust oneof bindings from a serialized FileDescriptorSet."`
	Plugin  plugin.Cmd `cmd:"" help:"Run as a protoc plugin (CodeGeneratorRequest on stdin)."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(Version())
	return nil
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("ferropb"),
		kong.Description("Rust oneof binding generator for protocol buffer schemas."),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
