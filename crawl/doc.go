// Package crawl drives the paginated crawl: fetch a page, embed and store
// its items, checkpoint the cursor, pause, repeat.
//
// # Components
//
//   - Crawler runs the loop and decides when to stop.
//   - Upserter normalizes and embeds a page on an ants worker pool and
//     writes it to the vector store in one call.
//   - Throttle sleeps 60s after every 100 requests and 0.7s after every page.
//   - ProgressTracker prints a running count and rate.
//
// # Usage
//
//	upserter, err := crawl.NewUpserter(embedder, store)
//	if err != nil {
//	    return err
//	}
//	defer upserter.Release()
//
//	crawler, err := crawl.NewCrawler(client, cursors, upserter,
//	    crawl.WithProgress(os.Stderr, 100))
//	if err != nil {
//	    return err
//	}
//	result, err := crawler.Run(ctx)
//
// # Stop Conditions
//
// The crawl stops when a page comes back empty (EmptyStop), when a stored
// page has no next cursor (NoCursorStop), when any step fails (ErrorStop),
// or when ctx is cancelled (Interrupted). In every case the cursor store
// holds the cursor the next run should start from.
package crawl
