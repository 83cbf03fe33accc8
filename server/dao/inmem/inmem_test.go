package inmem

import (
	"testing"

	"github.com/tracon/scopecmd/server/dao"
	"github.com/tracon/scopecmd/server/dao/daotest"
)

func Test_Store(t *testing.T) {
	daotest.RunStoreTests(t, func(t *testing.T) dao.Store {
		return NewDatastore()
	})
}
