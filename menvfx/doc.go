// Package menvfx wires menv into Uber Fx applications.
//
// NewModule provides a named *menv.Result and a *menv.Holder that always
// carries the latest successful load:
//
//	fx.New(
//		menvfx.NewModule("app",
//			menvfx.WithLoadOptions(menv.WithProfile("prod")),
//			menvfx.WithWatch(nil),
//		),
//		fx.Invoke(fx.Annotate(func(res *menv.Result) { ... }, fx.ParamTags(`name:"app"`))),
//	)
//
// NewApp builds an fx.App with the slog logger installed, the same way the
// menv command runs its watch loop.
package menvfx
