package models

// Record is the per-role shape of a user at the system boundary. The set
// of implementations is closed: AdminRecord, QualityRecord, OperatorRecord.
type Record interface {
	Logical() User
	isRecord()
}

// AdminRecord is a staff member who manages the line configuration.
type AdminRecord struct {
	ID         string
	Email      string
	GivenName  string
	FamilyName string
}

// QualityRecord is a staff member who signs off inspections.
type QualityRecord struct {
	ID         string
	Email      string
	GivenName  string
	FamilyName string
}

// OperatorRecord is a line operator identified by payroll and badge.
type OperatorRecord struct {
	ID            string
	PayrollNumber string
	BadgeCode     string
	GivenName     string
	FamilyName    string
}

func (AdminRecord) isRecord()    {}
func (QualityRecord) isRecord()  {}
func (OperatorRecord) isRecord() {}

func (r AdminRecord) Logical() User {
	return User{ID: r.ID, Email: r.Email, GivenName: r.GivenName, FamilyName: r.FamilyName,
		Classification: Administrator, ResidesIn: TableStaff}
}

func (r QualityRecord) Logical() User {
	return User{ID: r.ID, Email: r.Email, GivenName: r.GivenName, FamilyName: r.FamilyName,
		Classification: Quality, ResidesIn: TableStaff}
}

func (r OperatorRecord) Logical() User {
	return User{ID: r.ID, PayrollNumber: r.PayrollNumber, BadgeCode: r.BadgeCode,
		GivenName: r.GivenName, FamilyName: r.FamilyName,
		Classification: Operator, ResidesIn: TableOperators}
}

// AsRecord narrows a logical user to its role-specific shape. The second
// result is false when the classification is outside the enum.
func AsRecord(u User) (Record, bool) {
	switch u.Classification {
	case Administrator:
		return AdminRecord{ID: u.ID, Email: u.Email, GivenName: u.GivenName, FamilyName: u.FamilyName}, true
	case Quality:
		return QualityRecord{ID: u.ID, Email: u.Email, GivenName: u.GivenName, FamilyName: u.FamilyName}, true
	case Operator:
		return OperatorRecord{ID: u.ID, PayrollNumber: u.PayrollNumber, BadgeCode: u.BadgeCode,
			GivenName: u.GivenName, FamilyName: u.FamilyName}, true
	}
	return nil, false
}
