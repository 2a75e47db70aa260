// Package plugin implements protoc plugin mode: a CodeGeneratorRequest
// arrives on stdin and a CodeGeneratorResponse leaves on stdout.
// Generation options ride in the request's parameter string as
// comma-separated key=value pairs (protoc's --ferropb_opt).
package plugin

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/pluginpb"

	"github.com/ferropb/ferropb"
	"github.com/ferropb/ferropb/sink"
)

type Cmd struct{}

func (c *Cmd) Run() error {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("failed to read request: %w", err)
	}

	req := &pluginpb.CodeGeneratorRequest{}
	if err := proto.Unmarshal(data, req); err != nil {
		return fmt.Errorf("failed to parse request: %w", err)
	}

	resp := respond(context.Background(), req)

	out, err := proto.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}
	if _, err := os.Stdout.Write(out); err != nil {
		return fmt.Errorf("failed to write response: %w", err)
	}
	return nil
}

// respond runs generation for every requested file. Generation failures
// are reported through the response's error field; protoc treats a
// non-zero exit as a plugin crash, so they never bubble out of here.
func respond(ctx context.Context, req *pluginpb.CodeGeneratorRequest) *pluginpb.CodeGeneratorResponse {
	resp := &pluginpb.CodeGeneratorResponse{
		SupportedFeatures: proto.Uint64(uint64(pluginpb.CodeGeneratorResponse_FEATURE_PROTO3_OPTIONAL)),
	}

	params, err := parseParams(req.GetParameter())
	if err != nil {
		resp.Error = proto.String(err.Error())
		return resp
	}

	files, err := protodesc.NewFiles(&descriptorpb.FileDescriptorSet{File: req.GetProtoFile()})
	if err != nil {
		resp.Error = proto.String(fmt.Sprintf("failed to resolve descriptor set: %v", err))
		return resp
	}

	for _, path := range req.GetFileToGenerate() {
		fd, err := files.FindFileByPath(path)
		if err != nil {
			resp.Error = proto.String(fmt.Sprintf("schema %s not in request: %v", path, err))
			return resp
		}

		ms := sink.NewMemorySink()
		cfg := &ferropb.Config{
			Sink:         ms,
			Kernel:       params.Kernel,
			CrateMap:     params.CrateMap,
			DefaultCrate: params.DefaultCrate,
			ViewOnly:     params.ViewOnly,
			Manifest:     params.Manifest,
		}
		if _, err := ferropb.Generate(ctx, fd, cfg); err != nil {
			resp.Error = proto.String(fmt.Sprintf("failed to generate %s: %v", path, err))
			return resp
		}

		// Sort for a deterministic response; the sink hands back a map.
		generated := ms.Files()
		paths := make([]string, 0, len(generated))
		for p := range generated {
			paths = append(paths, p)
		}
		sort.Strings(paths)

		for _, p := range paths {
			resp.File = append(resp.File, &pluginpb.CodeGeneratorResponse_File{
				Name:    proto.String(p),
				Content: proto.String(string(generated[p])),
			})
		}
	}

	return resp
}
