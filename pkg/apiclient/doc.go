// Package apiclient is the transport boundary used by apiobject. It
// defines the request/response contract that resource operations are
// written against along with an HTTP implementation that is bootstrapped
// from a kubeconfig or an in-cluster rest.Config.
//
// Everything above this package deals in relative request targets i.e.
// api group/version, optional namespace & a resource URL. This package
// owns composing those into the final request path.
package apiclient
