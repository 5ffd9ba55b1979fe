// Package download fetches installer artifacts over HTTP.
//
// A failed transfer is rolled back before the error is returned: the partial
// destination file is deleted and its handle closed, both attempted and both
// awaited. When the rollback itself fails the caller gets a RollbackError
// holding the still-open file so it can clean up by hand.
package download
