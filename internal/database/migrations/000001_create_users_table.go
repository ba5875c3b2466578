package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// CreateUsersTable creates the users and partner_profiles tables
func CreateUsersTable() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "000001_create_users_table",
		Migrate: func(tx *gorm.DB) error {
			if err := tx.Exec(`
				CREATE EXTENSION IF NOT EXISTS "uuid-ossp";

				CREATE TABLE IF NOT EXISTS users (
					id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
					email VARCHAR(255) NOT NULL UNIQUE,
					password_hash VARCHAR(255) NOT NULL,
					role VARCHAR(20) NOT NULL DEFAULT 'partner',
					first_name VARCHAR(100),
					last_name VARCHAR(100),
					phone VARCHAR(30),
					company_name VARCHAR(255),
					status VARCHAR(20) NOT NULL DEFAULT 'pending',
					commission_rate DECIMAL(5,2) NOT NULL DEFAULT 30,
					last_login_at TIMESTAMP WITH TIME ZONE,
					created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
					updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
					deleted_at TIMESTAMP WITH TIME ZONE
				);

				CREATE INDEX idx_users_email ON users(email);
				CREATE INDEX idx_users_status ON users(status);
			`).Error; err != nil {
				return err
			}

			if err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS partner_profiles (
					id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
					user_id UUID NOT NULL UNIQUE REFERENCES users(id),
					business_name VARCHAR(255),
					business_type VARCHAR(100),
					tax_id VARCHAR(50),
					website VARCHAR(255),
					address_line1 VARCHAR(255),
					address_line2 VARCHAR(255),
					city VARCHAR(100),
					state VARCHAR(50),
					zip_code VARCHAR(20),
					bank_name VARCHAR(255),
					bank_routing_number VARCHAR(20),
					bank_account_number VARCHAR(30),
					w9_document_url TEXT,
					voided_check_url TEXT,
					created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
					updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
					deleted_at TIMESTAMP WITH TIME ZONE
				);
			`).Error; err != nil {
				return err
			}

			return nil
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Exec(`
				DROP TABLE IF EXISTS partner_profiles;
				DROP TABLE IF EXISTS users;
			`).Error
		},
	}
}
