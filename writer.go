// SPDX-License-Identifier: EPL-2.0

package playrec

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ik5/playrec/audio"
	"github.com/ik5/playrec/formats/wav"
)

// WriteRecording writes buf to path as mono PCM WAV, creating missing
// parent directories first. Calling it again for the same tree is fine.
func WriteRecording(path string, buf *audio.Buffer) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory %s: %w", dir, err)
		}
	}

	if err := wav.WriteFile(path, buf); err != nil {
		return fmt.Errorf("writing recording %s: %w", path, err)
	}

	return nil
}
