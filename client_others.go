//go:build !linux
// +build !linux

package wiphy

import (
	"errors"
	"runtime"
	"time"
)

// errUnimplemented is returned by all functions on platforms that
// do not have package wiphy implemented.
var errUnimplemented = errors.New("wiphy: not implemented on " + runtime.GOOS)

var _ osClient = &client{}

// A client is the no-op implementation of osClient.
type client struct{}

func newClient() (*client, error) { return nil, errUnimplemented }

func (*client) Close() error                       { return errUnimplemented }
func (*client) Dump(_ *Registry) error             { return errUnimplemented }
func (*client) Refresh(_ *PHY) error               { return errUnimplemented }
func (*client) SetDeadline(_ time.Time) error      { return errUnimplemented }
func (*client) SetReadDeadline(_ time.Time) error  { return errUnimplemented }
func (*client) SetWriteDeadline(_ time.Time) error { return errUnimplemented }

func (*client) ExtendedFeature(_ *PHY, _ uint) (bool, error) { return false, errUnimplemented }
