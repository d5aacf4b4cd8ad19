// SPDX-License-Identifier: EPL-2.0

package playrec

import "errors"

// ErrUnsupportedFormat is returned for inputs no registered decoder handles.
var ErrUnsupportedFormat = errors.New("unsupported audio format")
