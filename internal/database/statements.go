package database

// Registre central des requêtes CQL des chemins chauds. gocql prépare et
// met en cache les statements par session, il suffit de réutiliser le même
// texte de requête.

const (
	// --- keyspace clients ---
	StmtCustomerIDByEmail = "SELECT customer_id FROM customers_by_email WHERE email = ?"
	StmtClaimEmail        = "INSERT INTO customers_by_email (email, customer_id) VALUES (?, ?) IF NOT EXISTS"
	StmtCustomerByID      = `SELECT email, password, name, phone, company, is_active, requires_password_setup, last_login_at, created_at
		FROM customers WHERE customer_id = ?`
	StmtInsertCustomer = `INSERT INTO customers (customer_id, email, password, name, phone, company, is_active, requires_password_setup, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	StmtUpdateLastLogin = "UPDATE customers SET last_login_at = ? WHERE customer_id = ?"
	StmtAdminByEmail    = "SELECT admin_id, password, name FROM admins WHERE email = ?"

	// --- keyspace commandes ---
	StmtInsertOrder = `INSERT INTO orders (order_id, customer_id, service_id, package_tier, amount, currency, status,
		remote_order_id, cust_name, cust_email, cust_phone, cust_company, cust_requirements, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?) IF NOT EXISTS`
	StmtInsertOrderByCustomer = "INSERT INTO orders_by_customer (customer_id, created_at, order_id) VALUES (?, ?, ?)"
	StmtInsertOrderByRemote   = "INSERT INTO orders_by_remote (remote_order_id, order_id) VALUES (?, ?)"
	StmtOrderByID             = `SELECT customer_id, service_id, package_tier, amount, currency, status, remote_order_id,
		remote_payment_id, remote_signature, cust_name, cust_email, cust_phone, cust_company, cust_requirements, created_at, updated_at
		FROM orders WHERE order_id = ?`
	StmtOrderIDByRemote = "SELECT order_id FROM orders_by_remote WHERE remote_order_id = ?"
	StmtMarkOrderPaid   = `UPDATE orders SET status = ?, remote_payment_id = ?, remote_signature = ?, updated_at = ?
		WHERE order_id = ? IF status = ?`
	StmtUpdateOrderStatus = "UPDATE orders SET status = ?, updated_at = ? WHERE order_id = ? IF status = ?"
	StmtOrderIDsByCustomer = "SELECT order_id FROM orders_by_customer WHERE customer_id = ?"

	// --- settings (keyspace commandes) ---
	StmtSettingByKey = "SELECT value, encrypted, updated_at FROM settings WHERE key = ?"
	StmtUpsertSetting = "INSERT INTO settings (key, value, encrypted, updated_at) VALUES (?, ?, ?, ?)"

	// --- keyspace catalogue ---
	StmtServiceByID = "SELECT name, description, prices, currency, active FROM services WHERE service_id = ?"
	StmtAllServices = "SELECT service_id, name, description, prices, currency, active FROM services"
)
