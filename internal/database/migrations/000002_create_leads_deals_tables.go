package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// CreateLeadsDealsTables creates the leads and deals tables
func CreateLeadsDealsTables() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "000002_create_leads_deals_tables",
		Migrate: func(tx *gorm.DB) error {
			if err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS leads (
					id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
					user_id UUID NOT NULL REFERENCES users(id),
					business_name VARCHAR(255) NOT NULL,
					contact_name VARCHAR(255) NOT NULL,
					contact_email VARCHAR(255) NOT NULL,
					contact_phone VARCHAR(30),
					business_type VARCHAR(100),
					current_processor VARCHAR(100),
					monthly_volume DECIMAL(20,2) DEFAULT 0,
					average_ticket DECIMAL(20,2) DEFAULT 0,
					potential_monthly_revenue DECIMAL(20,2) DEFAULT 0,
					estimated_monthly_revenue DECIMAL(20,2),
					status VARCHAR(20) NOT NULL DEFAULT 'submitted',
					notes TEXT,
					submitted_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
					created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
					updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
					deleted_at TIMESTAMP WITH TIME ZONE
				);

				CREATE INDEX idx_leads_user_id ON leads(user_id);
				CREATE INDEX idx_leads_status ON leads(status);
			`).Error; err != nil {
				return err
			}

			if err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS deals (
					id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
					user_id UUID NOT NULL REFERENCES users(id),
					lead_id UUID REFERENCES leads(id),
					business_name VARCHAR(255) NOT NULL,
					contact_name VARCHAR(255),
					contact_email VARCHAR(255),
					value DECIMAL(20,2) NOT NULL,
					commission_rate DECIMAL(5,2) NOT NULL,
					commission_amount DECIMAL(20,2) NOT NULL,
					stage VARCHAR(20) NOT NULL DEFAULT 'qualified',
					expected_close_date TIMESTAMP WITH TIME ZONE,
					notes TEXT,
					created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
					updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
					deleted_at TIMESTAMP WITH TIME ZONE
				);

				CREATE INDEX idx_deals_user_id ON deals(user_id);
				CREATE INDEX idx_deals_lead_id ON deals(lead_id);
				CREATE INDEX idx_deals_stage ON deals(stage);
			`).Error; err != nil {
				return err
			}

			return nil
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Exec(`
				DROP TABLE IF EXISTS deals;
				DROP TABLE IF EXISTS leads;
			`).Error
		},
	}
}
