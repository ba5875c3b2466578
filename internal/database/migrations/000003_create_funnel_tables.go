package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// CreateFunnelTables creates purchases, document_signatures and referral_applications
func CreateFunnelTables() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "000003_create_funnel_tables",
		Migrate: func(tx *gorm.DB) error {
			if err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS purchases (
					id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
					user_id UUID NOT NULL REFERENCES users(id),
					reference VARCHAR(50) NOT NULL UNIQUE,
					plan_name VARCHAR(100) NOT NULL,
					amount DECIMAL(20,2) NOT NULL,
					status VARCHAR(20) NOT NULL DEFAULT 'pending',
					created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
					updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
					deleted_at TIMESTAMP WITH TIME ZONE
				);

				CREATE INDEX idx_purchases_user_id ON purchases(user_id);
			`).Error; err != nil {
				return err
			}

			if err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS document_signatures (
					id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
					user_id UUID NOT NULL REFERENCES users(id),
					document VARCHAR(50) NOT NULL,
					status VARCHAR(20) NOT NULL DEFAULT 'pending',
					signed_name VARCHAR(255),
					signed_ip VARCHAR(45),
					created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
					updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
					deleted_at TIMESTAMP WITH TIME ZONE,
					UNIQUE(user_id, document)
				);
			`).Error; err != nil {
				return err
			}

			if err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS referral_applications (
					id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
					user_id UUID NOT NULL REFERENCES users(id),
					reference VARCHAR(50) NOT NULL UNIQUE,
					business_name VARCHAR(255) NOT NULL,
					dba_name VARCHAR(255),
					business_type VARCHAR(100),
					tax_id VARCHAR(50),
					business_phone VARCHAR(30),
					business_email VARCHAR(255),
					business_address VARCHAR(255),
					city VARCHAR(100),
					state VARCHAR(50),
					zip_code VARCHAR(20),
					owner_name VARCHAR(255),
					owner_ssn VARCHAR(20),
					owner_dob VARCHAR(20),
					owner_email VARCHAR(255),
					owner_phone VARCHAR(30),
					home_address VARCHAR(255),
					monthly_volume DECIMAL(20,2) DEFAULT 0,
					average_ticket DECIMAL(20,2) DEFAULT 0,
					bank_name VARCHAR(255),
					bank_routing_number VARCHAR(20),
					bank_account_number VARCHAR(30),
					voided_check_url TEXT,
					bank_statement_url TEXT,
					drivers_license_url TEXT,
					status VARCHAR(20) NOT NULL DEFAULT 'submitted',
					created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
					updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
					deleted_at TIMESTAMP WITH TIME ZONE
				);

				CREATE INDEX idx_referral_applications_user_id ON referral_applications(user_id);
				CREATE INDEX idx_referral_applications_status ON referral_applications(status);
			`).Error; err != nil {
				return err
			}

			return nil
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Exec(`
				DROP TABLE IF EXISTS referral_applications;
				DROP TABLE IF EXISTS document_signatures;
				DROP TABLE IF EXISTS purchases;
			`).Error
		},
	}
}
