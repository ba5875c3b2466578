package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// CreateForumTables creates the forum_posts and forum_replies tables
func CreateForumTables() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "000004_create_forum_tables",
		Migrate: func(tx *gorm.DB) error {
			return tx.Exec(`
				CREATE TABLE IF NOT EXISTS forum_posts (
					id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
					user_id UUID NOT NULL REFERENCES users(id),
					title VARCHAR(255) NOT NULL,
					slug VARCHAR(255) NOT NULL UNIQUE,
					body TEXT NOT NULL,
					category VARCHAR(100),
					reply_count INTEGER DEFAULT 0,
					created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
					updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
					deleted_at TIMESTAMP WITH TIME ZONE
				);

				CREATE INDEX idx_forum_posts_user_id ON forum_posts(user_id);
				CREATE INDEX idx_forum_posts_slug ON forum_posts(slug);

				CREATE TABLE IF NOT EXISTS forum_replies (
					id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
					post_id UUID NOT NULL REFERENCES forum_posts(id),
					user_id UUID NOT NULL REFERENCES users(id),
					body TEXT NOT NULL,
					created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
					updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
					deleted_at TIMESTAMP WITH TIME ZONE
				);

				CREATE INDEX idx_forum_replies_post_id ON forum_replies(post_id);
			`).Error
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Exec(`
				DROP TABLE IF EXISTS forum_replies;
				DROP TABLE IF EXISTS forum_posts;
			`).Error
		},
	}
}
