package database

import (
	"context"
	"fmt"
	"log"

	"paperhub-backend/internal/config"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Database struct {
	Pool *pgxpool.Pool
}

func NewConnection(cfg *config.Config) (*Database, error) {
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	log.Println("Successfully connected to database")
	return &Database{Pool: pool}, nil
}

func (db *Database) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}

func (db *Database) BeginTx(ctx context.Context) (pgx.Tx, error) {
	return db.Pool.Begin(ctx)
}

func (db *Database) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	return db.Pool.QueryRow(ctx, sql, args...)
}

func (db *Database) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	return db.Pool.Query(ctx, sql, args...)
}

func (db *Database) Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	return db.Pool.Exec(ctx, sql, args...)
}

func RunMigrations(db *Database) error {
	ctx := context.Background()

	createUsersTable := `
	CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		email VARCHAR(255) UNIQUE NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		name VARCHAR(255) NOT NULL,
		role VARCHAR(50) NOT NULL CHECK (role IN ('author', 'editor', 'admin', 'coordinator')),
		avatar VARCHAR(255) DEFAULT '',
		bio TEXT DEFAULT '',
		preferences JSONB DEFAULT '{}',
		is_verified BOOLEAN DEFAULT FALSE,
		verification_code VARCHAR(10) DEFAULT '',
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);`

	createPapersTable := `
	CREATE TABLE IF NOT EXISTS papers (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		title VARCHAR(500) NOT NULL,
		abstract TEXT,
		content TEXT,
		file_url TEXT DEFAULT '',
		author_id UUID REFERENCES users(id) ON DELETE CASCADE,
		status VARCHAR(50) NOT NULL DEFAULT 'submitted' CHECK (status IN ('draft', 'submitted', 'under_review', 'recommended_for_publication', 'approved', 'rejected', 'published')),
		type VARCHAR(50) DEFAULT 'research' CHECK (type IN ('research', 'thesis', 'review', 'case_study', 'short_communication')),
		institution_code VARCHAR(50) DEFAULT '',
		publication_id VARCHAR(100) DEFAULT '',
		publication_date TIMESTAMP WITH TIME ZONE,
		publication_type VARCHAR(100) DEFAULT '',
		journal_type VARCHAR(100) DEFAULT '',
		journal_name VARCHAR(255) DEFAULT '',
		fiscal_year VARCHAR(20) DEFAULT '',
		allocated_budget DOUBLE PRECISION DEFAULT 0,
		external_budget DOUBLE PRECISION DEFAULT 0,
		research_type VARCHAR(100) DEFAULT '',
		completion_status VARCHAR(100) DEFAULT '',
		pi_name VARCHAR(255) DEFAULT '',
		pi_gender VARCHAR(20) DEFAULT '',
		co_investigators TEXT DEFAULT '',
		ethical_clearance VARCHAR(100) DEFAULT '',
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);`

	createReviewsTable := `
	CREATE TABLE IF NOT EXISTS reviews (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		paper_id UUID REFERENCES papers(id) ON DELETE CASCADE,
		reviewer_id UUID REFERENCES users(id) ON DELETE CASCADE,
		rating INTEGER CHECK (rating >= 1 AND rating <= 100),
		problem_statement INTEGER DEFAULT 0,
		literature_review INTEGER DEFAULT 0,
		methodology INTEGER DEFAULT 0,
		results INTEGER DEFAULT 0,
		conclusion INTEGER DEFAULT 0,
		originality INTEGER DEFAULT 0,
		clarity_organization INTEGER DEFAULT 0,
		contribution_knowledge INTEGER DEFAULT 0,
		technical_quality INTEGER DEFAULT 0,
		comments TEXT,
		recommendation VARCHAR(50) CHECK (recommendation IN ('accept', 'minor_revision', 'major_revision', 'reject')),
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE(paper_id, reviewer_id)
	);`

	createEventsTable := `
	CREATE TABLE IF NOT EXISTS events (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		title VARCHAR(500) NOT NULL,
		description TEXT,
		category VARCHAR(100) DEFAULT '',
		status VARCHAR(20) NOT NULL DEFAULT 'draft' CHECK (status IN ('draft', 'published')),
		image_url TEXT DEFAULT '',
		date TIMESTAMP WITH TIME ZONE NOT NULL,
		location VARCHAR(255),
		coordinator_id UUID REFERENCES users(id) ON DELETE CASCADE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);`

	createNewsTable := `
	CREATE TABLE IF NOT EXISTS news (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		title VARCHAR(500) NOT NULL,
		summary TEXT,
		content TEXT,
		category VARCHAR(100) DEFAULT '',
		status VARCHAR(20) NOT NULL DEFAULT 'draft' CHECK (status IN ('draft', 'published')),
		image_url TEXT DEFAULT '',
		author_id UUID REFERENCES users(id) ON DELETE CASCADE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);`

	createMessagesTable := `
	CREATE TABLE IF NOT EXISTS messages (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		sender_id UUID REFERENCES users(id) ON DELETE CASCADE,
		receiver_id UUID REFERENCES users(id) ON DELETE CASCADE,
		content TEXT NOT NULL,
		attachment_url TEXT,
		attachment_name TEXT,
		attachment_type TEXT,
		attachment_size INTEGER,
		is_read BOOLEAN DEFAULT FALSE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);`

	createNotificationsTable := `
	CREATE TABLE IF NOT EXISTS notifications (
		id BIGSERIAL PRIMARY KEY,
		user_id UUID REFERENCES users(id) ON DELETE CASCADE,
		message TEXT NOT NULL,
		paper_id UUID REFERENCES papers(id) ON DELETE SET NULL,
		is_read BOOLEAN DEFAULT FALSE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);`

	createInteractionTables := `
	CREATE TABLE IF NOT EXISTS likes (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID REFERENCES users(id) ON DELETE CASCADE,
		post_type VARCHAR(20) NOT NULL CHECK (post_type IN ('news', 'event')),
		post_id UUID NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE(user_id, post_type, post_id)
	);
	CREATE TABLE IF NOT EXISTS comments (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID REFERENCES users(id) ON DELETE CASCADE,
		post_type VARCHAR(20) NOT NULL CHECK (post_type IN ('news', 'event')),
		post_id UUID NOT NULL,
		content TEXT NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);
	CREATE TABLE IF NOT EXISTS shares (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID REFERENCES users(id) ON DELETE CASCADE,
		post_type VARCHAR(20) NOT NULL CHECK (post_type IN ('news', 'event')),
		post_id UUID NOT NULL,
		message_id UUID REFERENCES messages(id) ON DELETE SET NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);`

	createIndexes := `
	CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);
	CREATE INDEX IF NOT EXISTS idx_papers_author_id ON papers(author_id);
	CREATE INDEX IF NOT EXISTS idx_papers_status ON papers(status);
	CREATE INDEX IF NOT EXISTS idx_reviews_paper_id ON reviews(paper_id);
	CREATE INDEX IF NOT EXISTS idx_reviews_reviewer_id ON reviews(reviewer_id);
	CREATE INDEX IF NOT EXISTS idx_events_date ON events(date);
	CREATE INDEX IF NOT EXISTS idx_news_status ON news(status);
	CREATE INDEX IF NOT EXISTS idx_messages_sender_receiver ON messages(sender_id, receiver_id);
	CREATE INDEX IF NOT EXISTS idx_messages_created_at ON messages(created_at);
	CREATE INDEX IF NOT EXISTS idx_notifications_user_id ON notifications(user_id);
	CREATE INDEX IF NOT EXISTS idx_notifications_is_read ON notifications(user_id, is_read);
	CREATE INDEX IF NOT EXISTS idx_likes_post ON likes(post_type, post_id);
	CREATE INDEX IF NOT EXISTS idx_comments_post ON comments(post_type, post_id);`

	migrations := []string{
		createUsersTable,
		createPapersTable,
		createReviewsTable,
		createEventsTable,
		createNewsTable,
		createMessagesTable,
		createNotificationsTable,
		createInteractionTables,
		createIndexes,
	}

	for _, migration := range migrations {
		if _, err := db.Pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}
