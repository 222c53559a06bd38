package db

import (
	"gallery/config"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var Instance *gorm.DB

func Init() {
	var instance *gorm.DB
	var err error
	if config.MYSQL_DSN != "" {
		instance, err = gorm.Open(mysql.Open(config.MYSQL_DSN), &gorm.Config{
			SkipDefaultTransaction: true,
			PrepareStmt:            true,
		})
	} else {
		instance, err = gorm.Open(sqlite.Open(config.SQLITE_FILE), &gorm.Config{
			SkipDefaultTransaction: true,
		})
	}
	if err != nil || instance == nil {
		panic(err)
	}
	Instance = instance
}
