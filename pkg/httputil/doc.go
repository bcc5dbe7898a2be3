// Package httputil holds the HTTP client helpers used to talk to a running
// explorer.
//
// # Retry
//
// [Retry] repeats an operation with exponential backoff while it fails with a
// [RetryableError]. Wrap transient failures with [Transient]:
//
//	err := httputil.Retry(ctx, 3, 200*time.Millisecond, func() error {
//	    resp, err := client.Do(req)
//	    if err != nil {
//	        return httputil.Transient(err)
//	    }
//	    defer resp.Body.Close()
//	    if httputil.RetryableStatus(resp.StatusCode) {
//	        return httputil.Transient(fmt.Errorf("status %s", resp.Status))
//	    }
//	    return nil
//	})
//
// Any other error is returned at once.
package httputil
