package mysql

// Table definitions. Creation is idempotent; ordering matters because of the
// foreign keys (franchise before store, dinerOrder before orderItem).
//
// orderItem deliberately carries no foreign key on menuId: order items are
// point-in-time snapshots and stay valid when the catalog changes.
var tableCreateStatements = []string{
	`CREATE TABLE IF NOT EXISTS user (
		id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) UNIQUE NOT NULL,
		password VARCHAR(255) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS auth (
		token VARCHAR(512) PRIMARY KEY,
		userId INT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS userRole (
		id INT AUTO_INCREMENT PRIMARY KEY,
		userId INT NOT NULL,
		role VARCHAR(255) NOT NULL,
		objectId INT NOT NULL DEFAULT 0,
		INDEX (userId),
		INDEX (objectId)
	)`,
	`CREATE TABLE IF NOT EXISTS franchise (
		id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) UNIQUE NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS store (
		id INT AUTO_INCREMENT PRIMARY KEY,
		franchiseId INT NOT NULL,
		name VARCHAR(255) NOT NULL,
		FOREIGN KEY (franchiseId) REFERENCES franchise(id)
	)`,
	`CREATE TABLE IF NOT EXISTS menu (
		id INT AUTO_INCREMENT PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		description VARCHAR(255) NOT NULL,
		image VARCHAR(1024) NOT NULL,
		price DECIMAL(19,8) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS dinerOrder (
		id INT AUTO_INCREMENT PRIMARY KEY,
		dinerId INT NOT NULL,
		franchiseId INT NOT NULL,
		storeId INT NOT NULL,
		date DATETIME NOT NULL,
		INDEX (dinerId)
	)`,
	`CREATE TABLE IF NOT EXISTS orderItem (
		id INT AUTO_INCREMENT PRIMARY KEY,
		orderId INT NOT NULL,
		menuId INT NOT NULL,
		description VARCHAR(255) NOT NULL,
		price DECIMAL(19,8) NOT NULL,
		FOREIGN KEY (orderId) REFERENCES dinerOrder(id)
	)`,
}
