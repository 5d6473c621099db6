// Package source defines how keybindings are discovered.
//
// A [Source] reads one program's configuration and returns its bindings as
// [keybind.Keybind] records. Sources are looked up by name in a [Registry]
// and run in order by [Collect], which keeps going when one of them fails:
//
//	reg := source.Registry{
//		"niri": func() source.Source { return niri.New() },
//	}
//
//	srcs, err := reg.Build([]string{"niri"})
//	if err != nil {
//		return err
//	}
//
//	binds, err := source.Collect(ctx, srcs...)
//	// binds holds every record from the sources that succeeded; err joins
//	// one [*Error] per source that failed.
package source
