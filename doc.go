// Package fluxbot is a client framework for OneBot 11 chat bots over a
// reverse WebSocket connection: the server pushes events and replies to
// action calls over a single duplex socket, and fluxbot turns that stream
// into an ordered handler pipeline with synchronous-feeling calls.
//
// The basic unit of event processing is a handler: a function whose
// declared arguments are extractors, registered with the On1..On6
// adapters. A handler runs only when every one of its extractors produces
// a value from the current event; otherwise it is skipped silently. The
// returned Control signal (Continue, Skip, Block) decides whether later
// registrations still run.
//
//	bot := fluxbot.New(connect.Config{Target: "ws://localhost:19999"}).
//		WithHandler(fluxbot.On1(func(ctx context.Context, bc *fluxbot.Context, msg *extract.Message) fluxbot.Control {
//			cli := api.For(bc)
//			_, err := cli.SendMsgLike(ctx, msg.MessageEvent, msg.Reply(message.FromText("pong")))
//			if err != nil {
//				return fluxbot.Skip
//			}
//			return fluxbot.Continue
//		})).
//		Build()
//
//	if err := bot.Run(ctx); err != nil {
//		log.Fatal(err)
//	}
//
// # Calls
//
// Context.Call correlates each outgoing action frame with its reply via a
// random echo token, so handlers can call the server as if it were a
// synchronous API. The api package wraps the OneBot action catalogue in
// typed helpers.
//
// # States
//
// Shared values registered with Builder.WithState are stored one per
// type and read from handlers through extract.State. A missing state is
// a non-match, not an error: the handler is skipped.
//
// # Services
//
// A Service bundles an Init step (run once at startup, before any frame
// is processed) with a manual Serve entry point that bypasses the
// extractor mechanism. Chain builds a Service out of ordinary handlers.
package fluxbot
