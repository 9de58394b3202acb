// Package async provides a small generic Future used to run rule predicates
// that may complete later.
//
// A Future is either created already settled (Resolve, Reject), which lets
// synchronous code satisfy an asynchronous signature without a goroutine, or
// started with Go, which runs the function in its own goroutine. Callers wait
// with Await or AwaitContext and can poll with IsComplete. WaitAll collects a
// batch of futures in argument order.
//
// # Usage
//
//	f := async.Go(ctx, func(ctx context.Context) (bool, error) {
//	    return store.IsMember(ctx, "emails", email)
//	})
//
//	taken, err := f.AwaitContext(ctx)
//
// # Error Handling
//
// Errors returned by the function are delivered unchanged. A panic is
// recovered and reported as an error wrapping ErrPanic. AwaitContext returns
// ctx.Err() when the context finishes first; the computation keeps running
// and its result is still observable through Await.
package async
