/*
Package registry decides which failures are presentable:
safe to turn into a response the end user sees.

A [Kind] names a failure type and knows how to find it in an error chain.
Kinds are registered in a [Catalog] at startup.
A [Registry] resolves the kind names read from configuration against a Catalog, once,
and answers whether a failure is one of them.

Resolution errors surface immediately:
a misspelled kind name is a configuration error, never a silently empty set.

	reg, err := registry.New(registry.DefaultCatalog(), cfg.ExceptionKinds...)
	if err != nil {
		log.Fatal(err)
	}

	if failure, ok := reg.Match(err); ok {
		// present failure
	}

[*Registry.Reload] swaps the set of kinds atomically;
concurrent calls to [*Registry.Match] never block on it.
*/
package registry
