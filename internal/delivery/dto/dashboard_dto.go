package dto

// AdminDashboardResponse carries the admin landing counters.
type AdminDashboardResponse struct {
	TotalDoctors         int64 `json:"total_doctors"`
	TotalPatients        int64 `json:"total_patients"`
	TotalAppointments    int64 `json:"total_appointments"`
	UpcomingAppointments int64 `json:"upcoming_appointments"`
}

// DoctorDashboardResponse carries the doctor's week ahead plus the
// distinct patients ever assigned to them.
type DoctorDashboardResponse struct {
	Appointments  []AppointmentResponse `json:"appointments"`
	Patients      []PatientResponse     `json:"patients"`
	TotalPatients int                   `json:"total_patients"`
}

// PatientDashboardResponse carries the departments directory plus the
// patient's own upcoming booked appointments.
type PatientDashboardResponse struct {
	Departments  []DepartmentResponse  `json:"departments"`
	Appointments []AppointmentResponse `json:"appointments"`
}
