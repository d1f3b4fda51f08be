// Package file stores the crawl cursor in a small JSON file.
//
// The file is an object such as {"nextPost": "t3_abc123"}. A null or absent
// "nextPost" means no cursor. The file may carry other keys; they survive
// every save unchanged.
package file
