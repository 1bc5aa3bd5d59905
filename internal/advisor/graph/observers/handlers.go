package observers

import (
	"context"

	einocb "github.com/cloudwego/eino/callbacks"

	logx "github.com/smart-spoon-core/advisor/pkg/logger"
)

// NewAllCallbacks logs the lifecycle of every node the advisor graphs run.
func NewAllCallbacks() einocb.Handler {
	return einocb.NewHandlerBuilder().
		OnStartFn(func(ctx context.Context, info *einocb.RunInfo, _ einocb.CallbackInput) context.Context {
			if info != nil {
				logx.Debug().Str("node", info.Name).Str("component", string(info.Component)).Msg("node start")
			}
			return ctx
		}).
		OnEndFn(func(ctx context.Context, info *einocb.RunInfo, _ einocb.CallbackOutput) context.Context {
			if info != nil {
				logx.Debug().Str("node", info.Name).Msg("node end")
			}
			return ctx
		}).
		OnErrorFn(func(ctx context.Context, info *einocb.RunInfo, err error) context.Context {
			name := ""
			if info != nil {
				name = info.Name
			}
			logx.Error().Err(err).Str("node", name).Msg("node failed")
			return ctx
		}).
		Build()
}
