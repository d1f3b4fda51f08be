// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package search answers free-text queries against the crawled posts.
//
// A query is embedded with the same model used during the crawl and matched
// against the vector store. The Searcher over-fetches candidates, drops posts
// below the requested upvote floor, boosts posts whose text contains every
// query keyword, and returns the best N by score.
package search
