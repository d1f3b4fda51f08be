// Package harvest crawls a Reddit listing into a vector store.
//
// A Harvester is built from a config.Config. It opens the cursor store
// (a JSON file or a badger database), the vector store (embedded chromem or
// a qdrant server) and the embedding provider, then hands out crawlers and
// searchers that share them.
//
//	h, err := harvest.New(config.Default())
//	if err != nil {
//	    return err
//	}
//	defer h.Close()
//
//	result, err := h.Crawl(ctx)
//
// Each crawl resumes from the saved cursor and checkpoints after every page,
// so an interrupted run picks up where it stopped.
package harvest
