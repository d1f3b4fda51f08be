package badger

import "fmt"

// Key prefixes for different data types
const (
	checkpointSuffix = "chkpt"
)

// makeCheckpointKey generates the key holding a source's checkpoint.
// Format: source:chkpt
func makeCheckpointKey(source string) []byte {
	return []byte(fmt.Sprintf("%s:%s", source, checkpointSuffix))
}
