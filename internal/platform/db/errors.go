package db

import (
	"errors"
	"strings"

	mysql "github.com/go-sql-driver/mysql"
)

// MySQLのエラー番号
const (
	mysqlDupEntry      = 1062
	mysqlRowReferenced = 1451
	mysqlNoReferenced  = 1452
)

// UNIQUE制約違反か（MySQL 1062 / SQLiteのテストDBにも対応）
func IsDuplicate(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == mysqlDupEntry
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// 子行から参照されている行の削除（MySQL 1451）
func IsReferenced(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == mysqlRowReferenced
	}
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// 存在しない行へのFK（MySQL 1452）
func IsBadReference(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == mysqlNoReferenced
	}
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
