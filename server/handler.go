// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import (
	"net/http"

	"github.com/ava-labs/avalanchego/utils/json"
	"github.com/gorilla/rpc/v2"
)

// jsonContentTypes are the request content types the JSON-RPC codec accepts.
var jsonContentTypes = []string{
	"application/json",
	"application/json;charset=UTF-8",
}

// NewHandler wraps [service] in a JSON-RPC 2.0 handler registered as [name].
// Exported methods of [service] with the gorilla/rpc signature are served as
// "<name>.<method>". The avalanchego codec lets clients lowercase the first
// letter of the method.
func NewHandler(service any, name string) (http.Handler, error) {
	newServer := rpc.NewServer()
	codec := json.NewCodec()
	for _, contentType := range jsonContentTypes {
		newServer.RegisterCodec(codec, contentType)
	}
	if err := newServer.RegisterService(service, name); err != nil {
		return nil, err
	}
	return newServer, nil
}
