// Package fileutil holds file permission constants.
package fileutil

import "os"

// OwnerReadWrite is the mode for extracted documents. They are derived from
// internal API descriptions, so only the owner may read them.
const OwnerReadWrite os.FileMode = 0o600
