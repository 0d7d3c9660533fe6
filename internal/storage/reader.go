package storage

import (
	"github.com/carson-networks/trackease/internal/storage/transaction"
	"github.com/carson-networks/trackease/internal/storage/user"
)

type Reader struct {
	Transactions transaction.ITransactionTable
	Users        user.IUserTable
}
