package stor

import (
	"github.com/news-assignment/newsapi/pkg/config"
	"gorm.io/gorm"
)

const minTxRetry = 3

func txRetryCount() int {
	retryCount := config.GetIntKeyWithDefault("NEWSAPI_TX_RETRY", minTxRetry)
	if retryCount < minTxRetry {
		return minTxRetry
	}

	return retryCount
}

// WithTxRetry runs fn in a transaction, retrying the whole transaction on
// failure. Lock contention on sqlite and deadlocks on mysql both surface
// as transient errors here.
func WithTxRetry(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	var err error

	for i := 0; i < txRetryCount(); i++ {
		if err = db.Transaction(fn); err == nil {
			return nil
		}
	}

	return err
}
