// Package apiobject models single Kubernetes API resources on the
// client side. An Object holds two untyped documents: the mutable
// document callers edit directly & an immutable snapshot of what the
// server last confirmed. CRUD operations translate the divergence
// between the two into minimal JSON Patch requests & replace both
// wholesale with the server's authoritative response.
//
// These are the references which were studied while implementing this
// package
//
// - https://datatracker.ietf.org/doc/html/rfc6902
// - https://kubernetes.io/docs/reference/using-api/api-concepts/
// - https://kubernetes.io/docs/tasks/manage-kubernetes-objects/update-api-object-kubectl-patch/
// - https://github.com/kubernetes-client/python
package apiobject
