// Package control implements the gRPC transport of the remote "next" button.
//
// The service exchanges well-known protobuf types only: Next takes the
// requesting actor and GetStatus takes Empty, and both answer with a Struct
// describing the current run. The service descriptor is written by hand in
// the shape protoc-gen-go-grpc produces.
package control
