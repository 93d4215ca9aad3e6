// Package errors provides the coded error type used across pokedex-web.
//
// Every layer returns *Error values so that handlers can decide what to show
// without string matching:
//
//	err := errors.NotFoundf("entry %s not found", name)
//	err := errors.Networkf("GET %s: status %d", path, status)
//
// Wrapping keeps the original code:
//
//	if err := client.Get(ctx, path, nil, &out); err != nil {
//	    return errors.Wrapf(err, "failed to list categories")
//	}
//
// # Gateway taxonomy
//
// Calls to the remote data gateway fail in exactly two ways:
//   - Network: the request could not be completed or returned a non-success status
//   - NotFound: the gateway answered 404 for a named resource
//
// Views treat both as terminal for the operation that raised them; nothing in
// this module retries.
//
// # Configuration validation
//
//	vb := errors.NewValidationBuilder()
//	if cfg.Client == nil {
//	    vb.RequiredField("Client")
//	}
//	return vb.Build()
//
// # HTTP mapping
//
// Code.HTTPStatus maps a code to the status a page handler answers with.
package errors
